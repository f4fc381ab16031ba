package prompt

import (
	"fmt"
	"strings"
)

// 스타일 태그
const (
	StyleOil        = "zsh-oil"
	StyleWatercolor = "zsh-watercolor"
)

// Styles - 허용되는 스타일 태그 (순서 유지)
var Styles = []string{StyleOil, StyleWatercolor}

// RandomStyleMarker - 스타일 미지정 시 style_used 값
const RandomStyleMarker = "randomly_chosen"

// ExamplePrompts - 새 프롬프트 생성 시 참고하는 예시
var ExamplePrompts = []string{
	"in the style of zsh-oil, 1girl, leaning on railing, oval face smooth tan skin, subtle asym mouth eyes, medium forehead, dark straight thick eyebrows, almond brown eyes medium lashes, gaze slightly past camera, straight medium nose rounded tip, full closed lips neutral, left ear silver stud earring, long straight black hair middle part stray strands, natural makeup soft blush muted pink lips, cream satin low v-neck spaghetti-strap dress loose fit, shoulders collarbones upper chest exposed, right arm extended back hand on railing, left arm bent on hip, slight forward lean torso turned slightly left, head upright slight tilt left, background, green metal structure left side vertical beams matte muted green with bolts, calm blue-teal water spans horizon gentle ripples, sunset sky upper band gradient blue to orange patchy clouds, distant dark cityscape silhouette along horizon, green-white metal guard railing runs behind subject, view from eye-level slight left front",
	"in the style of zsh-oil, 1girl, standing, long straight dark-brown hair center-part, almond eyes looking down left, pensive melancholic expression, smooth warm-tan skin, no makeup, elongated symmetrical face, natural arched eyebrows, straight medium nose, small pursed lips, rounded chin soft jawline, relaxed slouched shoulders, arms at sides, light-blue sleeveless square-neck top loose fit, no accessories, head tilted down left three-quarter, frontal torso, background, dark navy blue painterly backdrop full frame subtle gradients, white chalk-like handwritten chinese text overlay scattered and overlapping figure semi-transparent varied size, camera eye-level frontal view",
	"in the style of zsh-watercolor, 1girl, floating supine, face tilted upward partially submerged, eyes closed gentle curve, long light eyelashes, faint eyebrows, bluish eyelids, delicate nose, lips gently parted reddish pink no teeth, small rounded chin, flushed pink cheeks, smooth pale forehead, soft jawline, pale cool undertones smooth complexion, cool blue-green reflections on skin, serene expression, long reddish-brown hair fans in water soft hairline, subtle wet sheen, youthful skin, no makeup, no accessories, no tattoos or marks, long pale neck, bare submerged shoulders arms hidden, no clothing visible, blurred waterline soft edges, head tilted back angled up viewer left upside-down, background, abstract color washes, around head blend outward, wet-on-wet texture, muted greens aquas smoky grays, feathered diffuse edges, muted palette, greens browns light blues cluster edges, low saturation gentle gradients, layered depth, dreamy texture, watery blurry swirls around figure, fluid gradients no sharp forms, tranquil ethereal atmosphere, no distinct objects, purely abstract backdrop, swirling watercolor patterns, soft blending with figure, top-down bird's-eye close view from above",
}

// styleConstraint - 지시문에 넣을 스타일 조건
func styleConstraint(style string) string {
	if style == "" {
		return fmt.Sprintf("Choose either %s.", strings.Join(Styles, " or "))
	}
	return fmt.Sprintf("Use the %s style.", style)
}

// BuildInstruction - chat 모델에 보낼 사용자 지시문 생성
func BuildInstruction(style string) string {
	var b strings.Builder
	b.WriteString("Given these prompts, write a new text prompt I can use to generate a painting adhering to the same style and central concepts described here. ")
	b.WriteString(styleConstraint(style))
	b.WriteString("\n\nExamples:\n")
	for i, p := range ExamplePrompts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(p)
	}
	b.WriteString("\n\nReturn only the prompt text, no additional explanation.")
	return b.String()
}
