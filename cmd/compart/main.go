// cmd/compart/main.go
package main

import (
	"compart/internal/app"
	"compart/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
