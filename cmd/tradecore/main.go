// Package main provides the command-line interface for tradecore.
package main

func main() {
	Execute()
}
