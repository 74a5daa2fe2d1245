// Package translation provides README translation services backed by the
// OpenAI or Gemini APIs. It includes a translation cache so identical texts
// are translated once per run.
package translation
