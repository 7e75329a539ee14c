package main

import "github.com/victormicco/mahito/cmd/mahito"

func main() { mahito.Execute() }
