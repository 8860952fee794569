package prompt

// OutlineTemplate asks for a structured outline of the product video.
// Args: duration, language, product, description, benefits, tone,
// platforms, aspect ratios, image analysis, allowed tones.
const OutlineTemplate = `You are a senior social media creative director.
Create a detailed outline for a %[1]d-second product video script in %[2]s.

Product: %[3]s
Description: %[4]s
Benefits:
- %[5]s
Tone: %[6]s
Target platforms: %[7]s
Preferred aspect ratios: %[8]s
Optional image analysis (if provided): %[9]s

Provide a structured outline with:
1) Scroll-stopping hook (first 3-5 seconds)
2) Demonstration or value points mapping to the benefits
3) Social proof or objection handling
4) Clear CTA adapted to the platforms

Notes:
- Tailor the pacing to %[1]ds.
- If image analysis is present, weave visual references into the hook.
- Tone: %[6]s (Allowed: %[10]s)
- Keep language aligned with the selected tone throughout.`

// ScriptTemplate turns an outline into a strict JSON scene list.
// Args: language, outline, duration, tone, allowed tones, platforms.
const ScriptTemplate = `You are a senior short-form video scriptwriter.
Convert the following outline into a scene-by-scene script in %[1]s.

Outline:
%[2]s

Output format: STRICT JSON array (no backticks, no prose), where each scene is an object with exactly these fields:
- "id": integer scene number starting at 1
- "duration": positive integer duration in seconds
- "visual_prompt": short description of visuals for the scene (concise; 8-14 words)
- "narration_text": text for the voiceover

Constraints:
- Total speaking duration should be close to %[3]d seconds.
- Tone: %[4]s (Allowed: %[5]s)
- Target platforms: %[6]s
- Keep narration tight and natural; avoid filler and long asides.
- visual_prompt must not include camera jargon; describe what the viewer sees.
- Do NOT include any keys beyond the four specified; do NOT include comments.

Example of the required shape (values are illustrative only):
[
    {"id": 1, "duration": 4, "visual_prompt": "Close-up of product on clean desk", "narration_text": "Meet ProductName, your daily boost."},
    {"id": 2, "duration": 7, "visual_prompt": "Hand uses product while a highlight shows the key benefit", "narration_text": "It saves you time with one tap."}
]`

// HashtagsTemplate asks for per-platform captions and hashtags.
// Args: language, platforms, product, benefits, script, tone.
const HashtagsTemplate = `You are a social media strategist. Create platform-ready captions and hashtags in %[1]s.

Target platforms: %[2]s
Product: %[3]s
Key benefits: %[4]s

Script context:
%[5]s

Output format:
For each platform, provide:
- Caption (1-2 lines, with a strong CTA)
- 8-10 relevant, high-intent hashtags (avoid banned terms, mix broad + niche)

Keep captions succinct, benefit-driven, and aligned with the platform culture.
Maintain an overall tone of "%[6]s" consistently.`

// CaptionOptionsTemplate asks for a JSON array of caption options.
// Args: count, language, product, benefits, script, tone.
const CaptionOptionsTemplate = `You are an expert social copywriter.
Propose %[1]d distinct caption options in %[2]s for the content below.

Product: %[3]s
Key benefits: %[4]s

Script context:
%[5]s

Constraints:
- 1-2 lines each, strong hook and clear CTA.
- Vary style within the same overall tone "%[6]s".
- Avoid emojis unless they truly add clarity.

Output STRICTLY as compact JSON array of strings. Example:
["Option 1", "Option 2", "Option 3"]`

// HashtagsFromCaptionTemplate asks for hashtags matching a chosen caption.
// Args: language, platforms, product, tone, caption, script, min, max.
const HashtagsFromCaptionTemplate = `You are a social media strategist. Generate a concise set of hashtags in %[1]s.

Platforms: %[2]s
Product: %[3]s
Tone: %[4]s

Chosen Caption:
%[5]s

Script context:
%[6]s

Instructions:
- Return between %[7]d and %[8]d hashtags.
- High-intent, relevant; avoid banned terms.
- Mix broad + niche; prefer camelCase where helpful.
- Exclude the leading # symbols in output.

Output STRICTLY as a compact JSON array of strings, e.g. ["tagOne", "tagTwo", "tagThree"].`
