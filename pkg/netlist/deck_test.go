package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `* ORIGINAL gate sweep
.include "./bin_0_nch_original.lib"
.option verbose=1
.temp -269
.param nf=1
.param w=1.26 l=0.15

VGATE_src net1 GND 0
M1 net2 net1 0 0 sky130_fd_pr__nfet_01v8__model.0 L=0.15 W=1.26 nf=1 ad='int((nf+1)/2)*W/nf*0.29'
+ pd='2*int((nf+1)/2)*(W/nf+0.29)' sa=0
.save i(V1_meas)

.control
  save all
  dc VGATE_src 0 1.8 0.1
.endc

.GLOBAL GND
.end
`

func TestParseDeck(t *testing.T) {
	deck, err := ParseDeck(sampleDeck)
	require.NoError(t, err)

	assert.Equal(t, "ORIGINAL gate sweep", deck.Title)
	assert.Equal(t, []string{"./bin_0_nch_original.lib"}, deck.Includes)
	assert.Equal(t, []string{"verbose=1"}, deck.Options)
	require.NotNil(t, deck.Temp)
	assert.Equal(t, -269.0, *deck.Temp)
	assert.Equal(t, map[string]string{"nf": "1", "w": "1.26", "l": "0.15"}, deck.Params)
	assert.Equal(t, []string{"i(V1_meas)"}, deck.Saves)
	assert.Equal(t, []string{"GND"}, deck.Globals)
	assert.Equal(t, []string{"save all", "dc VGATE_src 0 1.8 0.1"}, deck.Control)
	assert.True(t, deck.Ended)

	require.Len(t, deck.Elements, 2)
	src, ok := deck.Element("vgate_src")
	require.True(t, ok)
	assert.Equal(t, []string{"net1", "GND"}, src.Nodes)
	assert.Equal(t, "0", src.Value)

	m1, ok := deck.Element("M1")
	require.True(t, ok)
	assert.Equal(t, "M", m1.Type)
	assert.Equal(t, []string{"net2", "net1", "0", "0"}, m1.Nodes)
	assert.Equal(t, "sky130_fd_pr__nfet_01v8__model.0", m1.Model)
	assert.Equal(t, "1.26", m1.Params["w"])
	assert.Equal(t, "'2*int((nf+1)/2)*(W/nf+0.29)'", m1.Params["pd"])
	assert.Equal(t, "0", m1.Params["sa"])
}

func TestParseDeckErrors(t *testing.T) {
	tests := map[string]string{
		"unterminated control": "* t\n.control\nrun\n",
		"unknown dot command":  "* t\n.tran 1n 10n\n",
		"short mosfet":         "* t\nM1 d g s b\n",
		"unknown element":      "* t\nQ1 c b e model\n",
		"bad temp":             "* t\n.temp cold\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDeck(input)
			assert.Error(t, err)
		})
	}
}
