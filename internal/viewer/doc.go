// Package viewer owns the external PDF viewer session.
//
// Session wraps a viewer process and its remote-control connection behind
// Start, IsHealthy, OpenDocument, TurnPage and Close. The process launcher,
// endpoint discovery and artifact cleanup are collaborators injected through
// small interfaces; internal/viewer/zathura provides the production
// implementation and internal/testsupport a scripted fake.
//
// A Session is not safe for concurrent use. It is owned by the dispatch loop,
// which serializes every viewer mutation, so the type carries no locks.
// Every mutating operation re-validates liveness and relaunches the viewer
// instead of trusting cached connection state.
package viewer
