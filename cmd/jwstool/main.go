package main

import "github.com/cybergodev/jsonwebtoken/cmd/jwstool/cmd"

func main() {
	cmd.Execute()
}
