package service

import "fmt"

// channelSchema is the JSON shape the model is asked to fill for a
// channel analysis. Sent verbatim inside the prompt.
const channelSchema = `{
  "channelName": "string",
  "stats": { "subscribers": "string", "totalVideos": "string", "country": "string", "shortsCount": "string" },
  "growthTimeline": [{"year": "2020", "subscribers": 1000000, "videos": 100}],
  "topicAnalysis": {
    "timeline": [{"year": "2020", "topic": "Gaming"}],
    "topicDistribution": [{"name": "Gaming", "value": 40}],
    "mostFrequentTheme": "string"
  },
  "sentimentAnalysis": { "positivePct": 70, "neutralPct": 20, "negativePct": 10, "biasScore": 25, "bias": "string", "reputation": "string" },
  "biography": { "summary": "string", "origin": "string", "evolution": "string", "milestones": "string", "audienceSentiment": "string", "biasReputation": "string" },
  "recommendation": { "status": "Follow or Pass", "reason": "string", "criteriaAnalysis": { "quality": "string", "consistency": "string", "bias": "string", "perception": "string" } }
}`

func channelPrompt(channelName string) string {
	return fmt.Sprintf(`
You are an expert YouTube analyst. Analyze the channel: %q.
Use Google Search to find current data about subscribers, videos, history, and reputation.
Return ONLY a valid JSON object matching this schema:
%s
`, channelName, channelSchema)
}

// battlePrompt embeds the already-analyzed channel reports as JSON so
// the synthesis call scores them without another search round.
func battlePrompt(channelNames string, channelData []byte) string {
	return fmt.Sprintf(`
You are a YouTube battle analyst. Compare these channels: %s.
Channel data: %s
Return ONLY valid JSON:
{
  "scores": [{"channelName": "string", "quality": 85, "consistency": 78, "trust": 90, "variety": 70, "overall": 80}],
  "verdict": {"winner": "string", "reasoning": "string", "narrative": "string"}
}`, channelNames, channelData)
}

// truthPrompt pins the oEmbed-verified title and creator as ground truth
// the model is forbidden from altering.
func truthPrompt(videoURL, videoID, title, author string) string {
	return fmt.Sprintf(`
You are analyzing a SPECIFIC YouTube video. Here is the VERIFIED information:

VIDEO URL: %s
VIDEO ID: %s
VERIFIED TITLE: %q
VERIFIED CREATOR: %q

This video information is 100%% accurate (fetched directly from YouTube). DO NOT change or invent different title/creator.

Your task:
1. Use the verified title and creator above (do not change them)
2. Use Google Search to find information ABOUT this specific video: %q by %s
3. Search for reviews, discussions, or fact-checks about this video
4. Identify factual claims that might be in a video with this title
5. Verify those claims against reliable sources
6. Calculate a Truth Score (0-100)

RULES:
- videoTitle MUST be exactly: %q
- creatorName MUST be exactly: %q
- If you cannot find specific content about this video, analyze based on the title and creator's reputation
- Be honest about what you can and cannot verify

Return ONLY valid JSON:
{
  "videoTitle": %q,
  "creatorName": %q,
  "language": "Primary language of the video (infer from title)",
  "detectedLanguageCode": "en/hi/es/etc",
  "truthScore": 0-100,
  "summaryVerdict": "Assessment based on title, creator reputation, and any found information",
  "isFakingFacts": true/false,
  "toneAnalysis": "Educational/Sensationalist/Neutral/Entertainment/News",
  "claims": [
    {
      "statement": "A claim that might be made based on the video title",
      "status": "Verified/Misleading/False/Unverified",
      "evidence": "What you found about this claim",
      "sourceUrl": "URL of source if available"
    }
  ]
}`, videoURL, videoID, title, author, title, author, title, author, title, author)
}
