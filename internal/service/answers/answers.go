// Package answers is the scripted response source behind the development
// server. It replays the production agent's status sequence and returns
// canned answers chosen by keyword, so the client can be exercised
// end-to-end without model credentials.
package answers

import "strings"

// Step is one processing stage surfaced to the user while the agent
// works. Icons and labels mirror the production pipeline nodes.
type Step struct {
	Node string
	Icon string
	Text string
}

// Turn is a fully scripted reply: the stages to announce, then the
// answer.
type Turn struct {
	Steps  []Step
	Answer string
}

var pipeline = []Step{
	{Node: "route_query", Icon: "🧠", Text: "Understanding your question..."},
	{Node: "web_search", Icon: "🔍", Text: "Searching mul.edu.pk..."},
	{Node: "generate", Icon: "✍️", Text: "Generating response..."},
	{Node: "guardrail", Icon: "🛡️", Text: "Preparing response..."},
}

var canned = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"admission", "apply", "enroll"},
		answer: "## Admissions at MUL\n\n" +
			"Admissions for the upcoming semester are open. You can apply by:\n\n" +
			"- Creating an account on the admissions portal\n" +
			"- Submitting your academic documents\n" +
			"- Paying the application processing fee\n\n" +
			"Full details are at [mul.edu.pk/admissions](https://mul.edu.pk/admissions).",
	},
	{
		keywords: []string{"program", "course", "degree", "faculty"},
		answer: "**Minhaj University Lahore** offers undergraduate and postgraduate " +
			"programs across *nine faculties*, including:\n\n" +
			"1. Computer Science & IT\n" +
			"2. Business & Management Sciences\n" +
			"3. Pharmacy and Allied Health Sciences\n\n" +
			"Browse the full catalogue at [mul.edu.pk](https://mul.edu.pk).",
	},
	{
		keywords: []string{"fee", "tuition", "scholarship"},
		answer: "### Fee and scholarship information\n\n" +
			"Tuition varies by program, and merit scholarships cover up to **50%** of " +
			"tuition. The current fee schedule is published at " +
			"[mul.edu.pk](https://mul.edu.pk).",
	},
}

const defaultAnswer = "I can help with questions about **Minhaj University Lahore**: " +
	"admissions, programs, fees, and campus life. What would you like to know?"

// Service chooses scripted turns. Stateless; safe for concurrent use.
type Service struct{}

// NewService creates the responder.
func NewService() *Service {
	return &Service{}
}

// Respond builds the scripted turn for a user message.
func (s *Service) Respond(message string) Turn {
	lower := strings.ToLower(message)
	for _, c := range canned {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return Turn{Steps: pipeline, Answer: c.answer}
			}
		}
	}
	return Turn{Steps: pipeline, Answer: defaultAnswer}
}
