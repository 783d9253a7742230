package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// diffContext is the number of unchanged lines around each change.
const diffContext = 3

// WriteDiff writes a unified diff for every result whose fix changed
// the file. Results without output are skipped.
func WriteDiff(w io.Writer, results []taxonomy.FileResult) error {
	s := DefaultStyles()
	for _, r := range results {
		if !r.Fixed() {
			continue
		}
		if _, err := io.WriteString(w, UnifiedDiff(r.File, string(r.Source), string(r.Output), s)); err != nil {
			return err
		}
	}
	return nil
}

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	ops                []lineOp
}

// UnifiedDiff renders the line diff of before and after.
func UnifiedDiff(path, before, after string, s Styles) string {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var ops []lineOp
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: d.Type, text: line})
		}
	}

	hunks := buildHunks(ops)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks {
		b.WriteString(s.HunkHeader.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			h.oldStart, h.oldCount, h.newStart, h.newCount)))
		b.WriteByte('\n')
		for _, op := range h.ops {
			switch op.kind {
			case diffmatchpatch.DiffInsert:
				b.WriteString(s.Added.Render("+" + op.text))
			case diffmatchpatch.DiffDelete:
				b.WriteString(s.Removed.Render("-" + op.text))
			default:
				b.WriteString(" " + op.text)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// buildHunks groups changed lines with up to diffContext lines of
// surrounding context. Changes closer than twice the context share a
// hunk.
func buildHunks(ops []lineOp) []hunk {
	var hunks []hunk
	oldLine, newLine := 1, 1

	i := 0
	for i < len(ops) {
		if ops[i].kind == diffmatchpatch.DiffEqual {
			oldLine++
			newLine++
			i++
			continue
		}

		// Back up over leading context.
		start := i
		for start > 0 && i-start < diffContext && ops[start-1].kind == diffmatchpatch.DiffEqual {
			start--
		}
		h := hunk{oldStart: oldLine - (i - start), newStart: newLine - (i - start)}
		for _, op := range ops[start:i] {
			h.ops = append(h.ops, op)
			h.oldCount++
			h.newCount++
		}

		// Extend until a run of equal lines longer than twice the
		// context, or the end.
		for i < len(ops) {
			if ops[i].kind == diffmatchpatch.DiffEqual {
				run := 0
				for i+run < len(ops) && ops[i+run].kind == diffmatchpatch.DiffEqual {
					run++
				}
				if i+run == len(ops) || run > 2*diffContext {
					take := min(run, diffContext)
					for _, op := range ops[i : i+take] {
						h.ops = append(h.ops, op)
						h.oldCount++
						h.newCount++
					}
					oldLine += take
					newLine += take
					i += take
					break
				}
				for _, op := range ops[i : i+run] {
					h.ops = append(h.ops, op)
					h.oldCount++
					h.newCount++
				}
				oldLine += run
				newLine += run
				i += run
				continue
			}

			h.ops = append(h.ops, ops[i])
			if ops[i].kind == diffmatchpatch.DiffDelete {
				h.oldCount++
				oldLine++
			} else {
				h.newCount++
				newLine++
			}
			i++
		}
		hunks = append(hunks, h)
	}
	return hunks
}

// splitLines splits text into lines without their terminators. A
// trailing newline does not produce an empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
