// Command build holds the project tasks. Run with: go run ./build [task]
package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"

	"github.com/nibzard/mdtick/cmd"
)

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "go test with the race detector",
	Action: func(a *goyek.A) {
		goCmd(a, "test", "-race", "./...")
	},
})

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "go vet",
	Action: func(a *goyek.A) {
		goCmd(a, "vet", "./...")
	},
})

var demo = goyek.Define(goyek.Task{
	Name:  "demo",
	Usage: "scan testdata and render the table and HTML dashboards",
	Action: func(a *goyek.A) {
		out := a.TempDir()
		list := filepath.Join(out, "paths.txt")
		page := filepath.Join(out, "dashboard.html")

		if err := cmd.Run(a.Context(), []string{"scan", filepath.Join("testdata", "projects"), list}); err != nil {
			a.Fatalf("scan: %v", err)
		}
		if err := cmd.Run(a.Context(), []string{"dashboard", "-view", "table", list}); err != nil {
			a.Fatalf("dashboard: %v", err)
		}
		err := cmd.Run(a.Context(), []string{"dashboard",
			"-html-output", page,
			"-template-file", filepath.Join("testdata", "template.html"),
			"-css-file", filepath.Join("testdata", "style.css"),
			list,
		})
		if err != nil {
			a.Fatalf("html: %v", err)
		}
		a.Logf("HTML dashboard written to %s", page)
	},
})

var all = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "vet, test and demo",
	Deps:  goyek.Deps{vet, test, demo},
})

func goCmd(a *goyek.A, args ...string) {
	c := exec.CommandContext(a.Context(), "go", args...)
	c.Stdout = a.Output()
	c.Stderr = a.Output()
	c.Env = os.Environ()
	if err := c.Run(); err != nil {
		a.Fatalf("go %v: %v", args, err)
	}
}

func main() {
	goyek.SetDefault(all)
	boot.Main()
}
