package llm

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// SpeechClient synthesizes assistant replies to audio so the character can
// be voiced in the UI.
type SpeechClient struct {
	client *texttospeech.Client
}

// NewSpeechClient connects to the Google Cloud TTS API. credentialsFile
// may be empty, in which case ambient credentials are used.
func NewSpeechClient(ctx context.Context, credentialsFile string) (*SpeechClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}
	return &SpeechClient{client: client}, nil
}

// Synthesize converts reply text to MP3 audio.
func (s *SpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         "en-US-Wavenet-F",
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return resp.AudioContent, nil
}

// Close releases the underlying connection.
func (s *SpeechClient) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
