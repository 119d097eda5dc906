package main

import "github.com/km-arc/configy/framework/console"

func main() {
	console.Execute()
}
