// cmd/gbsample/main.go
package main

import (
	"gbsample/internal/app"
	"gbsample/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
