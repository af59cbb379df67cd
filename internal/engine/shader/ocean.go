package shader

// Attribute locations shared by the ocean shaders and the vertex layout.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUV       = 2
)

// OceanVertex transforms the ocean mesh. Normals are flat per corner, point
// into the surface and arrive unnormalized, so they are negated here.
const OceanVertex = `#version 410 core

layout (location = 0) in vec4 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;
out vec2 vUV;

void main() {
	vNormal = -mat3(uModel) * aNormal;
	vUV = aUV;
	gl_Position = uViewProj * uModel * aPosition;
}
`

// OceanFragment shades with one directional light and either a flat colour
// or the water texture.
const OceanFragment = `#version 410 core

in vec3 vNormal;
in vec2 vUV;

uniform vec3 uLightDir;
uniform vec4 uColor;
uniform sampler2D uTexture;
uniform bool uUseTexture;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, -normalize(uLightDir)), 0.0);
	float light = 0.3 + 0.7 * diffuse;

	vec4 base = uUseTexture ? texture(uTexture, vUV) : uColor;
	FragColor = vec4(base.rgb * light, base.a);
}
`
