/*
Copyright © 2026 Finsight Authors
*/
package main

import "Finsight/internal/cli"

func main() {
	cli.Execute()
}
