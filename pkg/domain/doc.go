/*
Package domain contains the shared vocabulary of the morph engine.

It defines the sentinel errors returned across package boundaries and the
lifecycle events emitted while an animation runs. This package is kept free
of I/O and persistence, following Hexagonal Architecture principles.

# Key Entities

  - LifecycleHooks: callbacks fired when an animation begins, advances a frame, or finishes.
  - BeginEvent, FrameEvent, FinishEvent: the payloads passed to those callbacks.
*/
package domain
