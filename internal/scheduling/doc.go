// Package scheduling holds the conference schedule in memory and decides which
// events may be admitted to it.
//
// RoomRegistry owns rooms and their capacities, Store owns events, and Engine
// validates every create, modify and cancel against both plus a UserDirectory.
// Rule violations come back as domain.Outcome values or booleans; nothing in
// this package returns an error, logs, or performs I/O.
package scheduling
