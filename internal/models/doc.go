// Package models lists the OpenAI chat models that can translate README
// files, so users can pick a value for --openai-model.
package models
