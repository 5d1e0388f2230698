package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

const maxTitleWidth = 72

// Posts renders a page of posts as a table.
func (p *Printer) Posts(posts []types.Submission) error {
	table := NewTable(p.out, []string{"ID", "Score", "Comments", "Author", "Title"})
	for _, post := range posts {
		d := post.Data
		title := truncate(d.Title, maxTitleWidth)
		if d.Stickied {
			title = p.Bold(title)
		}
		table.AddRow(d.ID, p.Score(d.Score), fmt.Sprintf("%d", d.NumComments), d.Author, title)
	}
	return table.Render()
}

// Moderators renders a moderator list as a table.
func (p *Printer) Moderators(mods []types.ModeratorData) error {
	table := NewTable(p.out, []string{"Name", "Since", "Permissions"})
	for _, m := range mods {
		since := time.Unix(int64(m.Date), 0).UTC().Format("2006-01-02")
		table.AddRow(m.Name, p.Dim(since), strings.Join(m.ModPermissions, ","))
	}
	return table.Render()
}

// CommentLine is one comment of a flattened tree with its nesting level.
type CommentLine struct {
	Level   int
	Comment *types.Comment
}

// Comments renders comments as an indented outline.
func (p *Printer) Comments(lines []CommentLine) {
	for _, line := range lines {
		d := line.Comment.Data
		indent := strings.Repeat("  ", line.Level)
		body := truncate(strings.Join(strings.Fields(d.Body), " "), maxTitleWidth)
		fmt.Fprintf(p.out, "%s%s %s %s\n", indent, p.Bold(d.Author), p.Dim("("+p.Score(d.Score)+")"), body)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
