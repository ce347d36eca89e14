/*
Package catalog orchestrates access to stored documents.

It serializes writers of the same document within a process and, when a
ports.DistributedLocker is configured, across replicas sharing one store.
*/
package catalog
