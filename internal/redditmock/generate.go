package redditmock

import (
	"fmt"
	"math/rand"
)

var (
	generatedAuthors = []string{
		"thoughtful_commenter", "expert_analyst", "casual_observer", "debate_enthusiast",
		"helpful_explainer", "skeptic_user", "critical_thinker", "new_participant",
	}
	generatedBodies = []string{
		"You're absolutely right!",
		"I see what you mean, but...",
		"Interesting perspective!",
		"Could you provide more details?",
		"I respectfully disagree.",
		"This makes a lot of sense.",
	}
	generatedTitles = []string{
		"Weekly discussion thread",
		"What are you working on?",
		"Release notes are out",
		"Ask me anything",
		"Show and tell",
	}
)

// Generator produces deterministic fixtures for a given seed.
type Generator struct {
	rand *rand.Rand
	next int
}

// NewGenerator creates a generator. Equal seeds yield equal fixtures.
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

func (g *Generator) id(prefix string) string {
	g.next++
	return fmt.Sprintf("%s%d", prefix, g.next)
}

func (g *Generator) pick(from []string) string {
	return from[g.rand.Intn(len(from))]
}

// Posts generates n posts.
func (g *Generator) Posts(n int) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = Post{
			ID:     g.id("p"),
			Title:  g.pick(generatedTitles),
			Author: g.pick(generatedAuthors),
			Score:  g.rand.Intn(1000) - 50,
		}
	}
	return posts
}

// Thread generates a comment tree on linkID with breadth comments per level,
// nested depth levels deep. It holds breadth^1 + ... + breadth^depth comments.
func (g *Generator) Thread(linkID string, breadth, depth int) []Comment {
	if depth <= 0 || breadth <= 0 {
		return nil
	}
	comments := make([]Comment, breadth)
	for i := range comments {
		comments[i] = Comment{
			ID:      g.id("c"),
			Author:  g.pick(generatedAuthors),
			Body:    g.pick(generatedBodies),
			LinkID:  linkID,
			Replies: g.Thread(linkID, breadth, depth-1),
		}
	}
	return comments
}
