package shell

import (
	"embed"
	"strings"
)

//go:embed helptext
var helptext embed.FS

func usage() string {
	return usageTopic("usage")
}

func usageTopic(topic string) string {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "There is no help text for the topic " + topic
	}
	return strings.TrimRight(string(dat), "\n")
}

func helpTopics() []string {
	entries, err := helptext.ReadDir("helptext")
	if err != nil {
		return nil
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".txt")
		if name != "usage" {
			topics = append(topics, name)
		}
	}
	return topics
}
