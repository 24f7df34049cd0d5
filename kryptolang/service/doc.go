// Package service implements the four collaborator operations (parse,
// lexicon generation, grammar analysis and cipher) and the gateway that
// chains them.
//
// Local runs everything in-process. The transport packages expose Local over
// HTTP or QUIC and provide clients implementing the same Collaborators
// interface, so a Gateway can drive local or remote services alike.
package service
