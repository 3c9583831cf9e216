package netlist

import (
	"bufio"
	"fmt"
	"strings"
)

// Deck is a parsed simulator input file. Only the structure the renderer
// produces is interpreted; the control block is kept verbatim.
type Deck struct {
	Title    string
	Includes []string
	Params   map[string]string
	Options  []string
	Temp     *float64
	Saves    []string
	Globals  []string
	Elements []Element
	Control  []string
	Ended    bool
}

type Element struct {
	Type   string            // Part type (M, V, R, etc.)
	Name   string            // Part name
	Nodes  []string          // Node names
	Model  string            // Model name for M elements
	Value  string            // Source or passive value
	Params map[string]string // name=value fields
}

// Element returns the element called name, case-insensitively.
func (d *Deck) Element(name string) (Element, bool) {
	for _, elem := range d.Elements {
		if strings.EqualFold(elem.Name, name) {
			return elem, true
		}
	}
	return Element{}, false
}

func ParseDeck(input string) (*Deck, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	deck := &Deck{Params: make(map[string]string)}

	// Title or comment
	if scanner.Scan() {
		deck.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	var currentLine string
	inControl := false

	flush := func() error {
		if currentLine == "" {
			return nil
		}
		err := parseDeckLine(deck, currentLine)
		currentLine = ""
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if inControl {
			if strings.EqualFold(line, ".endc") {
				inControl = false
				continue
			}
			deck.Control = append(deck.Control, line)
			continue
		}

		// Empty line or full-line comment
		if len(line) == 0 || strings.HasPrefix(line, "*") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		// Line continue
		if strings.HasPrefix(line, "+") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "+"))
			if currentLine != "" {
				currentLine += " " + line
			}
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}

		if strings.EqualFold(line, ".control") {
			inControl = true
			continue
		}
		currentLine = line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netlist: reading deck: %w", err)
	}
	if inControl {
		return nil, fmt.Errorf("netlist: unterminated .control block")
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return deck, nil
}

func parseDeckLine(deck *Deck, line string) error {
	if strings.HasPrefix(line, ".") {
		return parseDotCommand(deck, line)
	}

	element, err := parseElement(line)
	if err != nil {
		return err
	}
	deck.Elements = append(deck.Elements, *element)
	return nil
}

// Parse .include, .temp, .param, .option, .save, .global, .end
func parseDotCommand(deck *Deck, line string) error {
	fields := strings.Fields(line)
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case ".include", ".inc":
		if len(args) < 1 {
			return fmt.Errorf("netlist: .include without path")
		}
		deck.Includes = append(deck.Includes, strings.Trim(strings.Join(args, " "), `"'`))

	case ".temp":
		if len(args) != 1 {
			return fmt.Errorf("netlist: .temp needs exactly one value")
		}
		temp, err := ParseValue(args[0])
		if err != nil {
			return fmt.Errorf("netlist: invalid .temp: %w", err)
		}
		deck.Temp = &temp

	case ".param":
		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("netlist: invalid .param %q", arg)
			}
			deck.Params[strings.ToLower(name)] = value
		}

	case ".option", ".options":
		deck.Options = append(deck.Options, args...)

	case ".save":
		deck.Saves = append(deck.Saves, args...)

	case ".global":
		deck.Globals = append(deck.Globals, args...)

	case ".end":
		deck.Ended = true

	default:
		return fmt.Errorf("netlist: unsupported dot command: %s", fields[0])
	}

	return nil
}

func parseElement(line string) (*Element, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("netlist: insufficient fields for element: %s", line)
	}

	elem := &Element{
		Type:   strings.ToUpper(fields[0][:1]),
		Name:   fields[0],
		Params: make(map[string]string),
	}

	var positional []string
	for _, field := range fields[1:] {
		if name, value, ok := strings.Cut(field, "="); ok {
			elem.Params[strings.ToLower(name)] = value
			continue
		}
		positional = append(positional, field)
	}

	switch elem.Type {
	case "M":
		if len(positional) < 5 {
			return nil, fmt.Errorf("netlist: mosfet %s needs 4 nodes and a model", elem.Name)
		}
		elem.Nodes = positional[:4]
		elem.Model = positional[4]

	case "V", "I", "R", "C", "L":
		if len(positional) < 2 {
			return nil, fmt.Errorf("netlist: element %s needs 2 nodes", elem.Name)
		}
		elem.Nodes = positional[:2]
		if len(positional) > 2 {
			elem.Value = strings.Join(positional[2:], " ")
		}

	default:
		return nil, fmt.Errorf("netlist: unsupported element type: %s", elem.Type)
	}

	return elem, nil
}
