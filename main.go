package main

import (
	"net/http"

	"github.com/aicodingstack/stackctl/cmd"
	"github.com/aicodingstack/stackctl/internals/httputil"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = httputil.New()

	if version != "" {
		cmd.Version = version
		cmd.Commit = commit
	}
	cmd.Execute()
}
