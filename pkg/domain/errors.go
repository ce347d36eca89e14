package domain

import "errors"

// ErrDocumentNotFound is returned when a document name cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidDocument is returned when a document cannot be compiled.
var ErrInvalidDocument = errors.New("invalid document")

// ErrUnknownKind is returned for transition entries whose kind is not registered.
var ErrUnknownKind = errors.New("unknown transition kind")

// ErrUnknownNode is returned when a transition entry references a node the document does not declare.
var ErrUnknownNode = errors.New("unknown node")

// ErrFrameLimit is returned when a sample asks for more frames than allowed.
var ErrFrameLimit = errors.New("frame limit exceeded")

// ErrInvalidName is returned for document names a store cannot hold.
var ErrInvalidName = errors.New("invalid document name")

// ErrAnimationFinished is returned when stepping an animation that already finished.
var ErrAnimationFinished = errors.New("animation finished")
