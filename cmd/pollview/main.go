package main

import "github.com/vncsmyrnk/lunchpoll/cmd/pollview/cmd"

func main() {
	cmd.Execute()
}
