// Package postcraft turns a blog post into a summary, keywords, a reading
// time estimate, hashtags, and ready-to-copy posts for several social
// platforms.
//
// This package contains domain types, interfaces, and the pure text
// pipeline following Ben Johnson's Standard Package Layout. Implementations
// that depend on third-party libraries live in subdirectories named after
// their primary dependency (e.g., trafilatura/, sqlite/, gin/).
package postcraft
