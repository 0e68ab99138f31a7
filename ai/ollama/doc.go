// Package ollama provides a generation backend for the native Ollama API.
//
// It exists alongside ai/openai because the fallback path deliberately
// avoids the OpenAI-compatible shim: when a commercial endpoint fails, the
// pipeline talks to a local Ollama server directly.
package ollama
