/*
Package ports defines the driven ports (interfaces) for the morph engine.

These interfaces decouple the engine from storage backends, letting documents
live in memory, on disk or in Redis.

# Key Interfaces

  - DocumentStore: persists raw animation documents by name.
  - Watchable: notifies about backend changes for hot reload.
  - DistributedLocker: serializes writers of the same document across replicas.
*/
package ports
