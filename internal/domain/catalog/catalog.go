package catalog

// Topic groups related tests together.
// Hierarchy: Topic → Tests → Questions.
type Topic struct {
	Name        string
	Description string
	Tests       []Test
}

// Test is a named question set inside a topic. Its questions are not held
// here; they are loaded on demand by ID.
type Test struct {
	ID           string
	Name         string
	Description  string
	QuestionsRef string // source-relative location of the question list
}

// FindTest looks a test up by ID across all topics.
func FindTest(topics []Topic, testID string) (Test, bool) {
	for _, t := range topics {
		for _, test := range t.Tests {
			if test.ID == testID {
				return test, true
			}
		}
	}
	return Test{}, false
}

// TestIDs returns every test ID in catalog order.
func TestIDs(topics []Topic) []string {
	var ids []string
	for _, t := range topics {
		for _, test := range t.Tests {
			ids = append(ids, test.ID)
		}
	}
	return ids
}
