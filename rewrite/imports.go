// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "regexp"

// RemoveUnusedImport removes
//
//	from contextlib import nested
//	import contextlib
//
// when the imported name is not mentioned anywhere else in content.
// It is meant to run after Scan.
func (r *Rewriter) RemoveUnusedImport(content string) string {
	ns, kw := regexp.QuoteMeta(r.namespace()), regexp.QuoteMeta(r.keyword())
	content = removeImport(content, `from[ \t]+`+ns+`[ \t]+import[ \t]+`+kw, r.keyword())
	content = removeImport(content, `import[ \t]+`+ns, r.namespace())
	return content
}

// removeImport deletes the first line matching stmt if name
// appears nowhere but on that line.
func removeImport(content, stmt, name string) string {
	re := regexp.MustCompile(`(?m)^` + stmt + `[ \t]*(?:#.*)?$\n?`)
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content
	}
	if len(wordPattern(name).FindAllStringIndex(content, 2)) > 1 {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}
