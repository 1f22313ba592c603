// Package task defines the task list data model and its pure derivations.
//
// A list is ordered newest-first and serialises as a JSON array:
//
//	[
//	  {
//	    "id": "0b6c9d9e-6f0e-4b8e-9a43-0c1f0b3f5a2e",
//	    "title": "Walk dog",
//	    "completed": false,
//	    "createdAt": 1718000000000
//	  }
//	]
//
// # Derivations
//
// Prepend, Toggle, Delete, and ClearCompleted never modify their input.
// Each returns a fresh List so callers can hand the result to a store
// while earlier snapshots stay intact. Unknown ids are tolerated: Toggle
// and Delete return a copy equal to the input.
//
// # Identifiers
//
// Ids come from an IDGenerator. UUIDGenerator is the production source;
// SequenceGenerator produces predictable ids for tests.
package task
