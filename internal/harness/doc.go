// Package harness runs scripted editing scenarios against a fresh
// composition store and snapshots the resulting state. Scenarios use
// deterministic ids, so two runs of the same script produce identical
// snapshots; golden files pin the expected state byte for byte.
package harness
