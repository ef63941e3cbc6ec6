// trackerview explores a tracker dataset through multi-select filters.
package main

import (
	"os"

	"github.com/hupe1980/trackerview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
