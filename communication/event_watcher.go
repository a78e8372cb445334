package communication

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

// WatchEventJournal tails the JSONL event journal and invokes broadcast for
// every envelope, existing lines first and then appends as they land. It
// returns when the watcher fails or done is closed.
func WatchEventJournal(journalPath string, done <-chan struct{}, broadcast func(core.Envelope)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Error creating journal watcher: %v", err)
		return
	}
	defer watcher.Close()

	// Create file if it doesn't exist
	if _, err := os.Stat(journalPath); os.IsNotExist(err) {
		file, err := os.Create(journalPath)
		if err != nil {
			log.Printf("Error creating event journal: %v", err)
			return
		}
		file.Close()
	}

	// First replay existing content
	content, err := os.ReadFile(journalPath)
	if err != nil {
		log.Printf("Error reading event journal: %v", err)
		return
	}
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" {
			continue
		}
		processEventLine(line, broadcast)
	}

	if err := watcher.Add(journalPath); err != nil {
		log.Printf("Error adding journal to watcher: %v", err)
		return
	}

	log.Printf("Started watching event journal: %s", journalPath)

	// Keep track of last size to detect appends
	lastSize := len(content)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				content, err := os.ReadFile(journalPath)
				if err != nil {
					log.Printf("Error reading journal after change: %v", err)
					continue
				}
				// Process only new content
				if len(content) > lastSize {
					for _, line := range strings.Split(string(content[lastSize:]), "\n") {
						if line == "" {
							continue
						}
						processEventLine(line, broadcast)
					}
					lastSize = len(content)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Journal watcher error: %v", err)
		case <-done:
			return
		}
	}
}

func processEventLine(line string, broadcast func(core.Envelope)) {
	var env core.Envelope
	if err := json.Unmarshal([]byte(line), &env); err != nil {
		log.Printf("Skipping malformed journal line: %v", err)
		return
	}
	broadcast(env)
}
