package main

import "lifeplan/cmd/lp/root"

func main() {
	root.Execute()
}
