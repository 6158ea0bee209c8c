// Package docs embeds the documentation topics shown by "stmt topic".
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

//go:embed *.md
var files embed.FS

// Readme is the topic listing all the others.
const Readme = "readme"

// Topic is an entry of the readme index.
type Topic struct {
	Name        string
	Description string
}

// an index entry reads "* name: description".
var entry = regexp.MustCompile(`^\*\s+([^:\s]+):\s*(.*)$`)

// Index returns the topics listed in the readme, in order.
func Index() ([]Topic, error) {
	content, err := files.ReadFile(Readme + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		if m := entry.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: m[1], Description: m[2]})
		}
	}
	return topics, scanner.Err()
}

// GetTopic returns the markdown of a topic.
func GetTopic(topic string) (string, error) {
	content, err := files.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of several topics, one after the other. The topic
// "*" stands for all of them.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			names = all
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the names of all the topics but the readme, sorted.
func GetAllTopics() ([]string, error) {
	paths, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	names := lo.Map(paths, func(p string, _ int) string { return strings.TrimSuffix(p, ".md") })
	return lo.Without(names, Readme), nil
}
