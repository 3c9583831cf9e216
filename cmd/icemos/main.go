package main

import "github.com/edp1096/icemos/cmd/icemos/cmd"

func main() {
	cmd.Execute()
}
