package main

import "github.com/afoley587/coding-challenges-2025/user-directory-api/cmd"

func main() {
	cmd.Execute()
}
