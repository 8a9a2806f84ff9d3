/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/samwightt/gql2openapi/cmd"

func main() {
	cmd.Execute()
}
