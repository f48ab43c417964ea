package main

import (
	"github.com/lehigh-university-libraries/metaexport/cmd"
)

func main() {
	cmd.Execute()
}
