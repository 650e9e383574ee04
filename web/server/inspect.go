package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialName string                 `json:"materialName,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the hit record and the top-level shape hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(math.Round(c.X*255)), int(math.Round(c.Y*255)), int(math.Round(c.Z*255)))
}

// extractMaterialInfo describes the Phong coefficients and texture of a material
func (s *Server) extractMaterialInfo(mat *material.Material, hit *material.HitRecord) map[string]interface{} {
	if mat == nil {
		return map[string]interface{}{}
	}
	surface := mat.GetColor(hit.U, hit.V, hit.Point)
	return map[string]interface{}{
		"color":        vec(mat.Color),
		"hex":          hexColor(mat.Color),
		"surfaceColor": vec(surface),
		"texture":      fmt.Sprintf("%T", mat.Texture),
		"ambient":      mat.KAmbient,
		"diffuse":      mat.KDiffuse,
		"specular":     mat.KSpecular,
		"shininess":    mat.Shininess,
		"reflectivity": mat.Reflectivity,
		"refractivity": mat.Refractivity,
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vec(geom.Point)
		properties["normal"] = vec(geom.Normal)
		return "plane", properties

	case *geometry.Cube:
		properties["center"] = vec(geom.Center)
		properties["size"] = vec(geom.Size)
		properties["rotationY"] = geom.RotationY
		return "cube", properties

	case *geometry.Cylinder:
		properties["baseCenter"] = vec(geom.BaseCenter)
		properties["axis"] = vec(geom.Axis)
		properties["height"] = geom.Height
		properties["radius"] = geom.Radius
		return "cylinder", properties

	case *geometry.Cone:
		properties["apex"] = vec(geom.Apex)
		properties["axis"] = vec(geom.Axis)
		properties["height"] = geom.Height
		properties["radius"] = geom.Radius
		return "cone", properties

	case *geometry.Torus:
		properties["center"] = vec(geom.Center)
		properties["majorRadius"] = geom.MajorRadius
		properties["minorRadius"] = geom.MinorRadius
		return "torus", properties

	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		return "triangle", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.GetTriangleCount()
		return "triangle_mesh", properties

	case *geometry.Group:
		properties["name"] = geom.Name
		properties["children"] = len(geom.Children)
		properties["translation"] = vec(geom.Transform.Translation)
		properties["rotation"] = vec(geom.Transform.Rotation)
		properties["scale"] = vec(geom.Transform.Scale)
		return "group", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the NoAliasing ray through pixel (x, y), with y = 0 on the top row,
// and returns the nearest hit together with the top-level shape that produced it
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	u := float64(pixelX) / float64(max(sceneObj.Width-1, 1))
	v := float64(sceneObj.Height-1-pixelY) / float64(max(sceneObj.Height-1, 1))
	ray := sceneObj.Camera.GetRay(u, v)

	tMin := sceneObj.Settings.TMin()
	var closest InspectResult
	closestSoFar := math.Inf(1)
	for _, shape := range sceneObj.Shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			closest = InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}
	return closest
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)
	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(hit.Material, hit),
			"geometry": geometryProps,
		},
	}
	if hit.Material != nil {
		response.MaterialName = hit.Material.Name
	}
	writeJSON(w, http.StatusOK, response)
}
