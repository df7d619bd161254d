package main

import "moneytrack/cmd"

func main() {
	cmd.Execute()
}
