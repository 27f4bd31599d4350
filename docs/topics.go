// Package docs holds the cgr documentation, one markdown file per topic.
//
// readme.md lists the topics. Examples in the topics are shell blocks that the
// package tests run against a freshly built cgr.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// All is the topic name standing for every topic.
const All = "*"

// GetTopic returns the markdown of topic, or of every topic for All.
func GetTopic(topic string) (string, error) {
	if topic == All {
		return GetTopics(All)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("no topic %q, see 'cgr topic' for the list: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	if slices.Contains(topics, All) {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		topics = all
	}
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted topic names, readme excluded.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != "readme" {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
