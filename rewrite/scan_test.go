// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/tools/txtar"
)

// TestRewriteGolden runs each testdata/*.txt archive. The archive holds
// in.py and either out.py with the expected text, optionally with the
// expected skipped list, or error with the expected error.
func TestRewriteGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			archive := make(map[string]string)
			for _, f := range ar.Files {
				archive[f.Name] = string(f.Data)
			}

			res, err := Default.Rewrite(archive["in.py"])
			if want, ok := archive["error"]; ok {
				if err == nil {
					t.Fatalf("no error, want %q", strings.TrimSpace(want))
				}
				if have := fmt.Sprintf("line %d: %v", Line(err), err); have != strings.TrimSpace(want) {
					t.Fatalf("error:\n%s\nwant:\n%s", have, want)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			out := Default.RemoveUnusedImport(res.Text)
			if want := archive["out.py"]; out != want {
				dmp := diffmatchpatch.New()
				t.Errorf("output does not match out.py:\n%s", dmp.DiffPrettyText(dmp.DiffMain(want, out, false)))
			}

			var skipped strings.Builder
			for _, err := range res.Skipped {
				fmt.Fprintf(&skipped, "line %d: %v\n", Line(err), err)
			}
			if skipped.String() != archive["skipped"] {
				t.Errorf("skipped:\n%s\nwant:\n%s", skipped.String(), archive["skipped"])
			}
		})
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{
			"with nested(A(), B(), C()):\n    do_stuff()\n",
			"with A(), B(), C():\n    do_stuff()\n",
		},
		{
			"with nested(A(), B(), C()) as (a, _, c):\n    do_stuff(1, a, c)\n",
			"with A() as a, B(), C() as c:\n    do_stuff(1, a, c)\n",
		},
		{
			"with nested(X(), Y()) as xy:\n    do_stuff(1, xy)\n",
			"with X() as v1, Y() as v2:\n    xy = (v1, v2)\n    do_stuff(1, xy)\n",
		},
		{
			"x = nested(A(), B())\n",
			"x = nested(A(), B())\n",
		},
		{
			"with nested(\n        A(),  # first manager\n        B()) as (a, b):\n    use(a, b)\n",
			"with nested(\n        A(),  # first manager\n        B()) as (a, b):\n    use(a, b)\n",
		},
		{
			"with nested(A(), B()) as ab: use(ab)\n",
			"with nested(A(), B()) as ab: use(ab)\n",
		},
		{
			"with nested(A(), B()) as ab:  # both\n    use(ab)\n",
			"with A() as v1, B() as v2:\n    ab = (v1, v2)  # both\n    use(ab)\n",
		},
	}
	for _, tt := range tests {
		out, err := Scan(tt.in)
		if err != nil {
			t.Errorf("Scan(%q): %v", tt.in, err)
			continue
		}
		if out != tt.out {
			t.Errorf("Scan(%q):\nhave:\n%s\nwant:\n%s", tt.in, out, tt.out)
			continue
		}
		again, err := Scan(out)
		if err != nil || again != out {
			t.Errorf("Scan is not idempotent on %q: %q, %v", out, again, err)
		}
	}
}

func TestScanMalformedKeepsText(t *testing.T) {
	in := "with nested(A(), B()):\n    pass\nwith nested(A(), B(), C()) as (a, b):\n    pass\n"
	out, err := Scan(in)
	if err == nil {
		t.Fatalf("Scan succeeded with %q", out)
	}
	if out != "" {
		t.Errorf("Scan returned partial text %q", out)
	}
}

func TestRewriterNamespace(t *testing.T) {
	r := &Rewriter{Namespace: "ctx", Keyword: "multi"}
	in := "import ctx\n\nwith ctx.multi(A(), B()) as (a, b):\n    a(b)\nwith contextlib.nested(C()):\n    pass\n"
	want := "\nwith A() as a, B() as b:\n    a(b)\nwith contextlib.nested(C()):\n    pass\n"
	out, err := r.Scan(in)
	if err != nil {
		t.Fatal(err)
	}
	if out = r.RemoveUnusedImport(out); out != want {
		t.Errorf("have:\n%s\nwant:\n%s", out, want)
	}
}

func TestBodyOf(t *testing.T) {
	s := " # trailing\n        a()\n\n  \n     \tb()\n        c()\n    d()\n        e()\n"
	want := " # trailing\n        a()\n\n  \n     \tb()\n        c()"
	if body := bodyOf(s, "    "); body != want {
		t.Errorf("bodyOf = %q, want %q", body, want)
	}
}
