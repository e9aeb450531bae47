// Package replica implements temperature replica exchange over a shared
// potential. Replicas propagate independently between exchange attempts;
// an [ExchangeMatrix] records every attempted and accepted swap so ladder
// quality can be diagnosed after the run.
package replica
