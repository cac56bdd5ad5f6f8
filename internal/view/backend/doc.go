// Package backend provides Host implementations for the view package.
//
// Memory keeps rendered state in plain maps and backs tests and headless
// use. Terminal renders the document to a tcell screen.
package backend
