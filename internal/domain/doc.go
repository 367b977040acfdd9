// Package domain defines the core types of the stackmap retail-stack diagram.
//
// This package holds the static catalog entities and the mutable view values
// that the rest of the service passes around. It has no storage or transport
// dependencies.
//
// # Static Types
//
// Node is one system of the retail stack (shop, OMS, ERP, ...) with a display
// label, a Role category and a description.
//
// Edge is a directed integration between two nodes, optionally labelled.
//
// Scenario names a business flow and the subset of edge ids it reveals. The
// reserved key ScenarioAll reveals every edge.
//
// # View Types
//
// LayoutMode selects one of the two position presets ("cube", "lanes").
//
// Position and Snapshot hold node coordinates. There is one Snapshot per
// layout mode and they are never mixed.
//
// Theme holds the three page colors persisted as one record.
//
// Document is the {layout, positions} shape used by export and import.
//
// Graph is the derived view handed to the browser's graph library.
package domain
