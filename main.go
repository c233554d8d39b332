package main

import (
	"kodi2jellyfin/cmd"
)

func main() {
	cmd.Execute()
}
