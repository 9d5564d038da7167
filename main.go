package main

import "prima-photo-backend/cmd"

func main() {
	cmd.Run()
}
