// Package stackoverflow provides an HTTP client for the Stack Exchange API,
// scoped to python-tagged Stack Overflow questions.
//
// The examples aggregator uses [Client.SearchQuestions] to find the
// top-voted questions about a library, [Client.TopAnswers] to pick the best
// answer of each, and [CodeFragments] to pull code out of the answer HTML.
//
// Anonymous access is limited to 300 requests per IP per day; responses are
// cached under the "stackoverflow" namespace to stay inside that quota.
package stackoverflow
