package cmd

import "testing"

func TestHistory(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("history")
		env.contains(out, "No runs recorded yet.")
	})

	t.Run("records pages run", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", sampleHTML)

		env.run("pages", "--repo", "Cyb3Raya-Blog")

		out := env.run("history")
		env.contains(out, "cli:pages")
		env.contains(out, "ok")
		env.contains(out, "files: 1")
	})

	t.Run("records flatten dry run", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/", "--dry-run")

		out := env.run("history")
		env.contains(out, "cli:flatten")
		env.contains(out, "(dry-run)")
	})

	t.Run("newest first with limit", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", flatHTML)

		env.run("flatten", "--root", ".", "--prefix", "/Cyb3Raya-Blog/", "--dry-run")
		env.run("pages", "--repo", "Cyb3Raya-Blog", "--dry-run")

		out := env.run("history", "-n", "1")
		env.contains(out, "cli:pages")
		env.notContains(out, "cli:flatten")
	})

	t.Run("json output", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("index.html", sampleHTML)
		env.run("pages", "--repo", "Cyb3Raya-Blog", "--dry-run")

		out := env.run("history", "-o", "json")
		env.contains(out, `"Source":"cli:pages"`)
	})

	t.Run("invalid limit", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("history", "-n", "0")
		if err == nil {
			t.Error("history -n 0 = nil, want error")
		}
	})
}
