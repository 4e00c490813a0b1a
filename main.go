package main

import "github.com/financer-app/apiserver/cmd"

func main() {
	cmd.Execute()
}
