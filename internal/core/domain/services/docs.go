// Package services contains domain services coordinating rules that span
// more than one aggregate: the transition authority deciding who may move
// an order where, and the assignment workflow binding a driver to an
// order and its tracking record atomically in memory.
package services
