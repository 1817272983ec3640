package cmd

import "testing"

const flatHTML = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="/Cyb3Raya-Blog/CSS/style.css">
</head>
<body>
  <a href="/Cyb3Raya-Blog/HTML/blog.html">blog</a>
  <a href="/Cyb3Raya/HTML/about.html">about</a>
  <a href="https://example.com/Cyb3Raya-Blog/keep">external-ish</a>
</body>
</html>
`

func TestFlatten(t *testing.T) {
	t.Run("strips single prefix", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		out := env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/")

		env.contains(out, "Changed: ")
		env.contains(out, "(replacements: 3)")
		env.contains(out, "Files changed: 1")
		env.contains(out, "Total replacements: 3")

		html := env.read("index.html")
		env.contains(html, `href="/CSS/style.css"`)
		env.contains(html, `href="/HTML/blog.html"`)
		// other prefix untouched
		env.contains(html, `href="/Cyb3Raya/HTML/about.html"`)
		// literal replacement hits text anywhere, including absolute URLs
		env.contains(html, `href="https://example.com/keep"`)
	})

	t.Run("multiple prefixes in order", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		out := env.run("flatten", "--root", ".",
			"--prefix", "/Cyb3Raya-Blog/", "--prefix", "/Cyb3Raya/")

		env.contains(out, "Total replacements: 4")
		html := env.read("index.html")
		env.contains(html, `href="/HTML/about.html"`)
	})

	t.Run("normalises bare prefix", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		env.run("flatten", "--root", ".", "--prefix", "Cyb3Raya-Blog")

		env.contains(env.read("index.html"), `href="/CSS/style.css"`)
	})

	t.Run("dry run reports without modifying", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		out := env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/", "--dry-run")

		env.contains(out, "Would change: ")
		env.contains(out, "Dry-run mode: no files were modified.")
		env.equals(env.read("index.html"), flatHTML)
	})

	t.Run("latin1 fallback instead of skipping", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("latin1.html", `<a href="/Cyb3Raya-Blog/page">caf`+"\xe9"+`</a>`)

		out := env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/")

		env.contains(out, "Files changed: 1")
		env.contains(env.read("latin1.html"), `href="/page"`)
	})

	t.Run("excludes vendor directories", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)
		env.write("node_modules/pkg/f.html", flatHTML)
		env.write(".git/info.html", flatHTML)

		out := env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/")

		env.contains(out, "Files changed: 1")
		env.equals(env.read("node_modules/pkg/f.html"), flatHTML)
	})

	t.Run("counts skipped non-text files", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)
		env.write("logo.png", "binary-ish")

		out := env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/")

		env.contains(out, "Files skipped (non-text ext): 1")
	})

	t.Run("prefixes from config", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)
		env.run("config", "flatten.prefixes", "/Cyb3Raya-Blog/")

		out := env.run("flatten", "--root", ".")
		env.contains(out, "Files changed: 1")
	})

	t.Run("backup sidecar created", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/")

		if !env.exists("index.html.bak") {
			t.Fatal("expected index.html.bak to be created")
		}
		env.equals(env.read("index.html.bak"), flatHTML)
	})
}

func TestFlatten_UsageErrors(t *testing.T) {
	t.Run("missing root exits 2", func(t *testing.T) {
		env := newTestEnv(t)

		out, code := env.exitCode("flatten", "--prefix", "/x/")
		if code != 2 {
			t.Fatalf("exit code = %d, want 2\noutput: %s", code, out)
		}
		env.contains(out, "root directory is required")
	})

	t.Run("nonexistent root exits 2", func(t *testing.T) {
		env := newTestEnv(t)

		out, code := env.exitCode("flatten", "--root", "no/such/dir", "--prefix", "/x/")
		if code != 2 {
			t.Fatalf("exit code = %d, want 2\noutput: %s", code, out)
		}
		env.contains(out, "root path does not exist or is not a directory")
	})

	t.Run("missing prefixes exits 2", func(t *testing.T) {
		env := newTestEnv(t)

		out, code := env.exitCode("flatten", "--root", ".")
		if code != 2 {
			t.Fatalf("exit code = %d, want 2\noutput: %s", code, out)
		}
		env.contains(out, "at least one --prefix")
	})
}
