// Package block implements closures whose bodies are statically verified to
// reference nothing from their defining scope beyond an explicit, typed
// environment value and package-level singletons. A verified closure — a
// Block — can be handed to another goroutine, worker, or process without
// aliasing mutable state from its creator's scope:
//   - Bodies are admitted through CheckNoEnv and CheckWithEnv, whose call
//     sites the blockcap analysis pass validates before a build is accepted.
//   - Builders bind verified bodies to concrete environment values, or
//     reconstruct them from persisted environment text via a Deserializer.
//   - Duplicate produces an independent second owner by copying the
//     environment through that type's Duplicator capability.
//
// A Block is immutable once built: Apply is deterministic for a given input,
// and the only sanctioned way to obtain a second owner of its environment is
// duplication, never aliasing.
package block
