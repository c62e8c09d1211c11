package lights

import (
	"fmt"

	"github.com/df07/go-hair-raytracer/pkg/hair"
)

var (
	_ hair.Light = (*PointLight)(nil)
	_ hair.Light = (*SphereLight)(nil)
	_ hair.Light = (*DirectionalLight)(nil)
)

// ParseShadowType maps a configuration name to a shadow type
func ParseShadowType(name string) (hair.ShadowType, error) {
	for _, s := range []hair.ShadowType{hair.ShadowNone, hair.ShadowMap, hair.ShadowRayTraced, hair.ShadowArea, hair.ShadowPortalGI} {
		if s.String() == name {
			return s, nil
		}
	}
	return hair.ShadowNone, fmt.Errorf("unknown shadow type %q", name)
}
