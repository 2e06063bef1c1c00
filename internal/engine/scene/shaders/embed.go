// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// RoadVertexShader is the vertex shader for road meshes.
//
//go:embed road.vert
var RoadVertexShader string

// RoadFragmentShader is the fragment shader for road meshes.
//
//go:embed road.frag
var RoadFragmentShader string

// GroundVertexShader is the vertex shader for the preview ground.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the fragment shader for the preview ground.
//
//go:embed ground.frag
var GroundFragmentShader string

// PointVertexShader is the vertex shader for path control points.
//
//go:embed point.vert
var PointVertexShader string

// PointFragmentShader is the fragment shader for path control points.
//
//go:embed point.frag
var PointFragmentShader string
