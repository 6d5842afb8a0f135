package main

import (
	"github.com/clampline/tenantctl/cmd"
)

func main() {
	cmd.Execute()
}
