// Package feeddistill turns the rendered HTML of a social-media timeline
// page into a bounded plain-text artifact for an AI assistant to summarize.
// It classifies the visible timeline items, extracts per-item text, collects
// the users seen on the page, and assembles everything in a fixed layout.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, gemini/).
package feeddistill
